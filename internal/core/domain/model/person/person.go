// Package person models the people known to the catalog: customers who place
// orders, managers who supervise tailors and owners who receive daily reports.
package person

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"tailoring/internal/pkg/errs"
)

var ErrPersonIsNotConstructed = errors.New("Person must be created via NewPerson constructor")

// Role is stored and compared by name.
type Role string

const (
	Owner    Role = "Owner"
	Manager  Role = "Manager"
	Customer Role = "Customer"
)

func (r Role) Validate() error {
	switch r {
	case Owner, Manager, Customer:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

type Person struct {
	id        int64
	firstName string
	lastName  string
	email     string
	role      Role

	isConstructed bool
}

func NewPerson(id int64, firstName, lastName, email string, role Role) (*Person, error) {
	p := &Person{
		firstName:     firstName,
		lastName:      lastName,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setEmail(email),
		p.setRole(role),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Person) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPersonIsNotConstructed
	}
	return nil
}

func (p *Person) ID() int64         { return p.id }
func (p *Person) FirstName() string { return p.firstName }
func (p *Person) LastName() string  { return p.lastName }
func (p *Person) Email() string     { return p.email }
func (p *Person) Role() Role        { return p.role }

func (p *Person) FullName() string {
	return strings.TrimSpace(p.firstName + " " + p.lastName)
}

func (p *Person) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("person id", fmt.Errorf("%d is not greater than 0", id))
	}
	p.id = id
	return nil
}

func (p *Person) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	p.email = email
	return nil
}

func (p *Person) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	p.role = role
	return nil
}
