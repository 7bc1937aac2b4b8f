// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "time"

// TokenPurpose tells what a signed token may be used for. It is embedded in
// the claims so a token minted for one purpose cannot be replayed for another.
type TokenPurpose string

const (
	PurposeAccess          TokenPurpose = "ACCESS"
	PurposeRefresh         TokenPurpose = "REFRESH"
	PurposeResetPassword   TokenPurpose = "RESET_PASSWORD"
	PurposeVerifyEmail     TokenPurpose = "VERIFY_EMAIL"
	PurposeAPIKey          TokenPurpose = "API_KEY"
	PurposeTemporaryAccess TokenPurpose = "TEMPORARY_ACCESS"
	PurposeImpersonation   TokenPurpose = "IMPERSONATION"
)

// Default lifetimes per purpose.
const (
	DefaultAccessTokenTTL  = time.Hour
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Valid reports whether p is a recognised purpose.
func (p TokenPurpose) Valid() bool {
	switch p {
	case PurposeAccess, PurposeRefresh, PurposeResetPassword, PurposeVerifyEmail,
		PurposeAPIKey, PurposeTemporaryAccess, PurposeImpersonation:
		return true
	default:
		return false
	}
}

// String implements [fmt.Stringer].
func (p TokenPurpose) String() string {
	return string(p)
}

// secretSlot selects which of the two signing secrets a purpose uses.
// Only REFRESH has its own secret.
type secretSlot int

const (
	slotAccess secretSlot = iota
	slotRefresh
)

func (p TokenPurpose) slot() secretSlot {
	if p == PurposeRefresh {
		return slotRefresh
	}
	return slotAccess
}
