package ses

import (
	"bytes"
	"context"
	"errors"
	"net/mail"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/icsbenin/candidature/pkg/mailer"
)

type mockSES struct {
	mock.Mock
}

func (m *mockSES) SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, _ ...func(*ses.Options)) (*ses.SendRawEmailOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*ses.SendRawEmailOutput)
	return out, args.Error(1)
}

func testEmail() *mailer.Email {
	return &mailer.Email{
		From:    "Candidatures <noreply@example.com>",
		To:      []string{"rh@example.com"},
		CC:      []string{"lead@example.com"},
		Subject: "Application: Jean Dupont - Matelot",
		HTML:    "<p>Hello</p>",
	}
}

func TestNew_RequiresRegion(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), Config{})
	require.ErrorIs(t, err, mailer.ErrInvalidConfig)
}

func TestSender_Healthcheck(t *testing.T) {
	t.Parallel()

	t.Run("no chain", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, NewWithClient(&mockSES{}).Healthcheck(context.Background()))
	})

	t.Run("static credentials", func(t *testing.T) {
		t.Parallel()
		s := NewWithClient(&mockSES{})
		s.creds = credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", "")
		require.NoError(t, s.Healthcheck(context.Background()))
	})

	t.Run("missing credentials", func(t *testing.T) {
		t.Parallel()
		s := NewWithClient(&mockSES{})
		s.creds = aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{}, errors.New("no EC2 IMDS role found")
		})
		err := s.Healthcheck(context.Background())
		require.ErrorIs(t, err, mailer.ErrInvalidConfig)
		require.ErrorContains(t, err, "no EC2 IMDS role found")
	})
}

func TestSender_Send(t *testing.T) {
	t.Parallel()

	client := &mockSES{}
	s := NewWithClient(client)

	client.On("SendRawEmail", mock.Anything, mock.MatchedBy(func(in *ses.SendRawEmailInput) bool {
		if aws.ToString(in.Source) != "noreply@example.com" {
			return false
		}
		if len(in.Destinations) != 2 || in.Destinations[1] != "lead@example.com" {
			return false
		}
		msg, err := mail.ReadMessage(bytes.NewReader(in.RawMessage.Data))
		return err == nil && msg.Header.Get("Subject") == "Application: Jean Dupont - Matelot"
	})).Return(&ses.SendRawEmailOutput{MessageId: aws.String("id-1")}, nil).Once()

	require.NoError(t, s.Send(context.Background(), testEmail()))
	client.AssertExpectations(t)
}

func TestSender_Send_Error(t *testing.T) {
	t.Parallel()

	client := &mockSES{}
	s := NewWithClient(client)
	apiErr := errors.New("MessageRejected")
	client.On("SendRawEmail", mock.Anything, mock.Anything).Return(nil, apiErr).Once()

	require.ErrorIs(t, s.Send(context.Background(), testEmail()), apiErr)
}

func TestSender_Send_InvalidSender(t *testing.T) {
	t.Parallel()

	client := &mockSES{}
	s := NewWithClient(client)
	email := testEmail()
	email.From = ""

	require.Error(t, s.Send(context.Background(), email))
	client.AssertNotCalled(t, "SendRawEmail", mock.Anything, mock.Anything)
}
