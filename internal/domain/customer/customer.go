package customer

import (
	"errors"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/validation"
)

var (
	ErrNotFound   = errors.New("customer: not found")
	ErrConflict   = errors.New("customer: already exists")
	ErrValidation = validation.ErrInvalid
)

const (
	MsgIDRequired          = "Id is required"
	MsgNameRequired        = "Name is required"
	MsgAddressRequired     = "Address is mandatory to activate a customer"
	MsgRewardPointsInvalid = "Reward points must be greater or equal to 0"
	MsgStreetRequired      = "Street is required"
	MsgNumberNotPositive   = "Number must be greater than 0"
	MsgZipRequired         = "Zip is required"
	MsgCityRequired        = "City is required"
)

type Customer struct {
	id           string
	name         string
	address      *Address
	active       bool
	rewardPoints int
}

func New(id, name string) (*Customer, error) {
	c := &Customer{id: id, name: name}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Restore rebuilds a customer from stored state, re-checking the same invariants
// as New and Activate.
func Restore(id, name string, address *Address, active bool, rewardPoints int) (*Customer, error) {
	c, err := New(id, name)
	if err != nil {
		return nil, err
	}
	if address != nil {
		c.ChangeAddress(*address)
	}
	if active {
		if err := c.Activate(); err != nil {
			return nil, err
		}
	}
	if err := c.AddRewardPoints(rewardPoints); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Customer) validate() error {
	if c.id == "" {
		return validation.New("id", MsgIDRequired)
	}
	if c.name == "" {
		return validation.New("name", MsgNameRequired)
	}
	return nil
}

func (c *Customer) ID() string        { return c.id }
func (c *Customer) Name() string      { return c.name }
func (c *Customer) IsActive() bool    { return c.active }
func (c *Customer) RewardPoints() int { return c.rewardPoints }

// Address returns the current address and whether one is set.
func (c *Customer) Address() (Address, bool) {
	if c.address == nil {
		return Address{}, false
	}
	return *c.address, true
}

func (c *Customer) ChangeName(name string) error {
	if name == "" {
		return validation.New("name", MsgNameRequired)
	}
	c.name = name
	return nil
}

func (c *Customer) ChangeAddress(address Address) {
	c.address = &address
}

func (c *Customer) Activate() error {
	if c.address == nil {
		return validation.New("address", MsgAddressRequired)
	}
	c.active = true
	return nil
}

func (c *Customer) Deactivate() {
	c.active = false
}

func (c *Customer) AddRewardPoints(points int) error {
	if points < 0 {
		return validation.New("reward_points", MsgRewardPointsInvalid)
	}
	c.rewardPoints += points
	return nil
}

func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	clone := *c
	if c.address != nil {
		addr := *c.address
		clone.address = &addr
	}
	return &clone
}
