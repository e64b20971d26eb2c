package domain

// TxType is the closed set of transaction types the signer can build.
type TxType string

const (
	TxTypeTransfer             TxType = "transfer"
	TxTypeVote                 TxType = "vote"
	TxTypeMultiPayment         TxType = "multiPayment"
	TxTypeDelegateRegistration TxType = "delegateRegistration"
	TxTypeDelegateResignation  TxType = "delegateResignation"
	TxTypeUnlockToken          TxType = "unlockToken"
)

// TxTypes lists every supported transaction type.
var TxTypes = []TxType{
	TxTypeTransfer,
	TxTypeVote,
	TxTypeMultiPayment,
	TxTypeDelegateRegistration,
	TxTypeDelegateResignation,
	TxTypeUnlockToken,
}

func (t TxType) IsValid() bool {
	for _, tt := range TxTypes {
		if t == tt {
			return true
		}
	}
	return false
}
