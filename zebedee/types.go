package zebedee

// Unit is the denomination an amount is expressed in. Amounts themselves
// stay opaque decimal strings as returned by the provider.
type Unit string

const (
	UnitMsats Unit = "msats"
	UnitSats  Unit = "sats"
)

// Invoice is a BOLT11 payment request and its lightning: URI.
type Invoice struct {
	Request string `json:"request"`
	URI     string `json:"uri"`
}

// defaultExpiresIn is the charge and withdrawal lifetime in seconds used
// when a request leaves ExpiresIn unset.
const defaultExpiresIn = 300
