// Package codec serializes engine values as canonical JSON records.
//
// A record is a flat JSON object with a "kind" discriminator. Keys are
// emitted in UTF-16 code unit order, strings are NFC normalized and floats
// are never produced, so equal values always encode to identical bytes.
// Fingerprint hashes those bytes under a per-kind domain prefix.
//
// Zones are written by name. The Codec resolves names through a
// zone.Registry in both directions; a provider the registry cannot name
// cannot be encoded.
package codec
