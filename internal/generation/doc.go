// Package generation produces format-valid bank identifiers: IBANs with an
// embedded digest checksum, card numbers with a Luhn check digit, and random
// PIN/CVV secrets. Generated identifiers are unlikely to collide but carry no
// uniqueness guarantee on their own; the owning store enforces global
// uniqueness by retrying generation on constraint violations.
package generation
