package account

import "bifrost.dev/node/wire"

// Wallet is the on-chain payload of a wallet account: its balance in
// prisms, the smallest unit the executor moves between accounts.
type Wallet struct {
	Prisms uint64
}

// Encode returns the canonical byte image of w.
func (w Wallet) Encode() []byte {
	wr := wire.NewWriter()
	wr.WriteU64(w.Prisms)
	return wr.Bytes()
}

// DecodeWallet parses the canonical byte image produced by Wallet.Encode.
func DecodeWallet(b []byte) (Wallet, error) {
	r := wire.NewReader(b)
	prisms, err := r.ReadU64()
	if err != nil {
		return Wallet{}, err
	}
	if err := r.ExpectDone(); err != nil {
		return Wallet{}, err
	}
	return Wallet{Prisms: prisms}, nil
}
