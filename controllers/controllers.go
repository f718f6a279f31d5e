package controllers

import (
	"github.com/rowlokie/Civic-Guard/chain"
	authUtils "github.com/rowlokie/Civic-Guard/utils"
)

// Shared collaborators injected once from main. The ledger and uploader are
// constructed at process start and passed by reference so handlers never
// build their own clients (and tests can swap in fakes).
var (
	ledger   chain.Ledger
	uploader *authUtils.ImageUploader
)

// SetLedger injects the token-ledger client used for on-chain rewards,
// balance reads and transfers.
func SetLedger(l chain.Ledger) {
	ledger = l
}

// SetUploader injects the image-host client used for issue photos.
func SetUploader(u *authUtils.ImageUploader) {
	uploader = u
}
