package application

import "strings"

// Form field names of the submission endpoint.
const (
	FieldLastName      = "nom"
	FieldFirstName     = "prenom"
	FieldNationality   = "nationalite"
	FieldMaritalStatus = "situation_matrimoniale"
	FieldAge           = "age"
	FieldPhone         = "telephone"
	FieldTargetRole    = "metier"

	FieldPhoto        = "photo"
	FieldCV           = "cv"
	FieldCertificates = "certificats"
)

// Role identifies what an uploaded file stands for in the application.
type Role string

const (
	RolePhoto       Role = "photo"
	RoleCV          Role = "cv"
	RoleCertificate Role = "certificate"
)

// Submission holds the applicant's text fields. It lives for one request only.
type Submission struct {
	LastName      string
	FirstName     string
	Nationality   string
	MaritalStatus string
	Age           string
	Phone         string
	TargetRole    string
}

// FullName returns "{FirstName} {LastName}".
func (s Submission) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// set assigns a text form field; unknown names are ignored.
func (s *Submission) set(field, value string) {
	switch field {
	case FieldLastName:
		s.LastName = value
	case FieldFirstName:
		s.FirstName = value
	case FieldNationality:
		s.Nationality = value
	case FieldMaritalStatus:
		s.MaritalStatus = value
	case FieldAge:
		s.Age = value
	case FieldPhone:
		s.Phone = value
	case FieldTargetRole:
		s.TargetRole = value
	}
}

// UploadedFile is one temporary file stored while a request is processed.
type UploadedFile struct {
	Role         Role
	OriginalName string
	Key          string
	ContentType  string
	Size         int64
}

// filesByRole returns the files with the given role in upload order.
func filesByRole(files []UploadedFile, role Role) []UploadedFile {
	var out []UploadedFile
	for _, f := range files {
		if f.Role == role {
			out = append(out, f)
		}
	}
	return out
}

// hasRole reports whether any file has the given role.
func hasRole(files []UploadedFile, role Role) bool {
	for _, f := range files {
		if f.Role == role {
			return true
		}
	}
	return false
}
