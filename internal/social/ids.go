// Identifiers: fixed-width base-64 codes for political entities.
package social

import (
	"strconv"
	"strings"

	"github.com/talgya/legion-shores/internal/errx"
)

// alphabet maps digit values to code symbols. Digit 0 is '0', so the
// all-zero code is the null id.
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ?!"

const base = len(alphabet)

// Code widths per kind.
const (
	EthnicWidth = 2
	RealmWidth  = 3
	RegionWidth = 3
	EntityWidth = 3
)

// Largest id representable at each width.
const (
	MaxEthnicID = EthnicID(base*base - 1)
	MaxRealmID  = RealmID(base*base*base - 1)
	MaxRegionID = RegionID(base*base*base - 1)
	MaxEntityID = EntityID(base*base*base - 1)
)

// WildsID is the reserved ethnic holding all land no named ethnic claimed.
const WildsID EthnicID = 128

// WildsName is the display name of the reserved wild ethnic.
const WildsName = "Wilds"

// Encode renders n as a code of exactly width symbols.
func Encode(n, width int) (string, error) {
	if width <= 0 {
		return "", errx.Configuration("code width must be positive", "width", width)
	}
	limit := 1
	for i := 0; i < width; i++ {
		limit *= base
	}
	if n < 0 || n >= limit {
		return "", errx.Structural("id does not fit code width", "id", n, "width", width)
	}
	return encode(n, width), nil
}

func encode(n, width int) string {
	buf := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		buf[i] = alphabet[n%base]
		n /= base
	}
	return string(buf)
}

// Decode parses a code back into its numeric value.
func Decode(code string) (int, error) {
	if code == "" {
		return 0, errx.Structural("empty id code")
	}
	n := 0
	for i := 0; i < len(code); i++ {
		d := strings.IndexByte(alphabet, code[i])
		if d < 0 {
			return 0, errx.Structural("invalid id symbol", "code", code, "pos", i)
		}
		n = n*base + d
	}
	return n, nil
}

// EthnicID identifies an ethnic. Zero is null.
type EthnicID uint16

// RealmID identifies a realm. Zero is null.
type RealmID uint32

// RegionID identifies a region. Zero is null.
type RegionID uint32

// EntityID identifies a placed entity. Zero is null.
type EntityID uint32

// Code returns the two-symbol code. Ids past MaxEthnicID, which no
// allocator hands out, render as '#' plus the decimal id so they never
// alias a valid code.
func (id EthnicID) Code() string { return idCode(int(id), EthnicWidth) }

// Code returns the three-symbol code; out of range as for EthnicID.
func (id RealmID) Code() string { return idCode(int(id), RealmWidth) }

// Code returns the three-symbol code; out of range as for EthnicID.
func (id RegionID) Code() string { return idCode(int(id), RegionWidth) }

// Code returns the three-symbol code; out of range as for EthnicID.
func (id EntityID) Code() string { return idCode(int(id), EntityWidth) }

func idCode(n, width int) string {
	s, err := Encode(n, width)
	if err != nil {
		return "#" + strconv.Itoa(n)
	}
	return s
}

func (id EthnicID) String() string { return id.Code() }
func (id RealmID) String() string  { return id.Code() }
func (id RegionID) String() string { return id.Code() }
func (id EntityID) String() string { return id.Code() }
