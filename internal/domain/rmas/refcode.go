package rmas

import (
	"strings"

	hashids "github.com/speps/go-hashids/v2"
)

// RefCoder turns the sequential RMA number into a short opaque reference
// code safe to hand to customers, so support links don't leak how many RMAs
// the shop has processed.
type RefCoder struct {
	h *hashids.HashID
}

func NewRefCoder(salt string) (*RefCoder, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = 8
	data.Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, err
	}
	return &RefCoder{h: h}, nil
}

func (c *RefCoder) Encode(seq int64) (string, error) {
	code, err := c.h.EncodeInt64([]int64{seq})
	if err != nil {
		return "", err
	}
	return strings.ToUpper(code), nil
}
