package fieldcipher

import "fmt"

// Sensitive is implemented by every output view that carries the encrypted
// field. SensitiveField returns a pointer into the view so the presenter can
// rewrite the value in place.
type Sensitive interface {
	SensitiveField() *string
}

// Presenter decrypts and masks the sensitive field of output views.
type Presenter struct {
	cipher *Cipher
}

// NewPresenter creates a Presenter backed by c.
func NewPresenter(c *Cipher) *Presenter {
	return &Presenter{cipher: c}
}

// Present decrypts the sensitive field of each view, masks it and writes the
// masked value back. Views with an empty field are left untouched.
func (p *Presenter) Present(views ...Sensitive) error {
	for i, v := range views {
		field := v.SensitiveField()
		if field == nil || *field == "" {
			continue
		}

		plain, err := p.cipher.Decrypt(*field)
		if err != nil {
			return fmt.Errorf("present view %d: %w", i, err)
		}
		*field = Mask(plain)
	}
	return nil
}
