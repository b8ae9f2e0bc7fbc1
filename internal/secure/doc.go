// Package secure keeps secret values out of ordinary Go memory while they
// are handed to the operator.
//
// Values read from the store are sealed into a memguard enclave
// (XSalsa20Poly1305 encrypted, mlocked where the platform allows) and only
// opened into a locked buffer for the duration of a write:
//
//	if err := secure.Reveal(os.Stdout, value); err != nil {
//	    return err
//	}
//
// This protects against swap and core dumps. It does not protect against
// an attacker with access to the running process.
package secure
