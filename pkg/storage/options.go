package storage

// Option configures Put operations.
type Option func(*putOptions)

// putOptions holds configuration for Put operations.
type putOptions struct {
	key             string           // Explicit key (replaces auto-generated)
	prefix          string           // Path prefix (e.g., "applications/")
	contentType     string           // Declared content type
	validationRules []ValidationRule // Validation rules to apply before and during the write
}

// WithKey sets an explicit storage key, replacing the auto-generated key.
func WithKey(key string) Option {
	return func(o *putOptions) {
		o.key = key
	}
}

// WithPrefix sets a path prefix for the stored file.
// Example: WithPrefix("cv") results in "cv/{key}"
func WithPrefix(prefix string) Option {
	return func(o *putOptions) {
		o.prefix = prefix
	}
}

// WithContentType sets the declared content type.
// When omitted the type is sniffed from the first bytes of the content.
func WithContentType(ct string) Option {
	return func(o *putOptions) {
		o.contentType = ct
	}
}

// WithValidation adds validation rules to be applied to the upload.
// If any rule fails, the upload is aborted and a *FileValidationError is returned.
func WithValidation(rules ...ValidationRule) Option {
	return func(o *putOptions) {
		o.validationRules = append(o.validationRules, rules...)
	}
}

func buildPutOptions(opts []Option) *putOptions {
	o := &putOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// sizeLimit returns the smallest MaxSize limit among the rules, or -1.
func (o *putOptions) sizeLimit() int64 {
	limit := int64(-1)
	for _, rule := range o.validationRules {
		if r, ok := rule.(*maxSizeRule); ok {
			if limit < 0 || r.maxBytes < limit {
				limit = r.maxBytes
			}
		}
	}
	return limit
}
