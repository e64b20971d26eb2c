package signerrpc

type syncArgs struct {
	Network        string    `json:"network"`
	Address        string    `json:"address"`
	PublicKey      string    `json:"publicKey,omitempty"`
	MultiSignature *multiSig `json:"multiSignature,omitempty"`
}

type syncReply struct {
	Nonce string `json:"nonce"`
}

type addressArgs struct {
	Network   string `json:"network"`
	PublicKey string `json:"publicKey"`
}

type addressReply struct {
	Address string `json:"address"`
}

type multiSig struct {
	Min        int      `json:"min"`
	PublicKeys []string `json:"publicKeys"`
}

type signatory struct {
	Kind           string   `json:"kind"`
	AuthMode       string   `json:"authMode,omitempty"`
	Secret         string   `json:"secret,omitempty"`
	Min            int      `json:"min,omitempty"`
	PublicKeys     []string `json:"publicKeys,omitempty"`
	DerivationPath string   `json:"derivationPath,omitempty"`
	PublicKey      string   `json:"publicKey,omitempty"`
}

type payment struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type txData struct {
	Amount    string    `json:"amount,omitempty"`
	To        string    `json:"to,omitempty"`
	Memo      string    `json:"memo,omitempty"`
	Votes     []string  `json:"votes,omitempty"`
	Unvotes   []string  `json:"unvotes,omitempty"`
	Payments  []payment `json:"payments,omitempty"`
	Username  string    `json:"username,omitempty"`
	UnlockIDs []string  `json:"unlockIds,omitempty"`
}

type signArgs struct {
	Type      string     `json:"type"`
	Network   string     `json:"network"`
	Sender    string     `json:"sender"`
	Fee       string     `json:"fee"`
	Nonce     string     `json:"nonce"`
	Data      txData     `json:"data"`
	Signatory *signatory `json:"signatory,omitempty"`
}

type signReply struct {
	UUID string `json:"uuid"`
}

type prepareReply struct {
	UUID    string `json:"uuid"`
	Payload string `json:"payload"`
}

type attachArgs struct {
	UUID      string `json:"uuid"`
	Signature string `json:"signature"`
	PublicKey string `json:"publicKey"`
}

type uuidArgs struct {
	UUID string `json:"uuid"`
}

type transactionReply struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
	Fee       string `json:"fee"`
	Nonce     string `json:"nonce"`
	Hex       string `json:"hex"`
}

type broadcastArgs struct {
	UUIDs []string `json:"uuids"`
}

type broadcastReply struct {
	Accepted []string          `json:"accepted"`
	Errors   map[string]string `json:"errors"`
}
