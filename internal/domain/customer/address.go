package customer

import (
	"fmt"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/validation"
)

// Address is a value object; changing a customer's address replaces it.
type Address struct {
	street string
	number int
	zip    string
	city   string
}

func NewAddress(street string, number int, zip, city string) (Address, error) {
	a := Address{street: street, number: number, zip: zip, city: city}
	switch {
	case a.street == "":
		return Address{}, validation.New("street", MsgStreetRequired)
	case a.number <= 0:
		return Address{}, validation.New("number", MsgNumberNotPositive)
	case a.zip == "":
		return Address{}, validation.New("zip", MsgZipRequired)
	case a.city == "":
		return Address{}, validation.New("city", MsgCityRequired)
	}
	return a, nil
}

func (a Address) Street() string { return a.street }
func (a Address) Number() int    { return a.number }
func (a Address) Zip() string    { return a.zip }
func (a Address) City() string   { return a.city }

func (a Address) String() string {
	return fmt.Sprintf("%s, %d, %s %s", a.street, a.number, a.zip, a.city)
}
