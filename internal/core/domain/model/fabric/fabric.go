// Package fabric holds the catalog entry for a fabric. Intake only checks existence by name.
package fabric

import (
	"errors"
	"fmt"
	"strings"

	"tailoring/internal/pkg/errs"
)

type Fabric struct {
	id   int64
	name string
}

func NewFabric(id int64, name string) (Fabric, error) {
	var err error
	if id <= 0 {
		err = errs.NewValueIsInvalidErrorWithCause("fabric id", fmt.Errorf("%d is not greater than 0", id))
	}
	if strings.TrimSpace(name) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("fabric name"))
	}
	if err != nil {
		return Fabric{}, err
	}
	return Fabric{id: id, name: name}, nil
}

func (f Fabric) ID() int64    { return f.id }
func (f Fabric) Name() string { return f.name }
