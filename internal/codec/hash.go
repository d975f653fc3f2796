package codec

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/roach88/datetimeng/internal/chrono"
)

// Fingerprint domains. The version suffix leaves room for a new encoding.
const (
	DomainDate     = "datetimeng/date/v1"
	DomainTime     = "datetimeng/time/v1"
	DomainDateTime = "datetimeng/datetime/v1"
	DomainDuration = "datetimeng/duration/v1"
)

// Fingerprint returns the hex SHA-256 of domain, a zero byte, then data.
func Fingerprint(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// FingerprintDateTime encodes dt and fingerprints the record. Two values
// share a fingerprint only when every field, fold and zone name match.
func (c *Codec) FingerprintDateTime(dt chrono.DateTime) (string, error) {
	data, err := c.EncodeDateTime(dt)
	if err != nil {
		return "", err
	}
	return Fingerprint(DomainDateTime, data), nil
}

// FingerprintDuration encodes d and fingerprints the record.
func (c *Codec) FingerprintDuration(d chrono.Duration) (string, error) {
	data, err := c.EncodeDuration(d)
	if err != nil {
		return "", err
	}
	return Fingerprint(DomainDuration, data), nil
}
