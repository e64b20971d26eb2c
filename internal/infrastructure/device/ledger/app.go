package ledger

// app describes the instruction set of a coin app running on the device.
type app struct {
	name       string
	cla        byte
	insVersion byte
	insPubKey  byte
	insSignTx  byte
	insSignMsg byte
}

var apps = map[string]app{
	"ARK": {
		name:       "Ark",
		cla:        0xe0,
		insVersion: 0x06,
		insPubKey:  0x02,
		insSignTx:  0x04,
		insSignMsg: 0x08,
	},
	"LSK": {
		name:       "Lisk",
		cla:        0xe0,
		insVersion: 0x09,
		insPubKey:  0x04,
		insSignTx:  0x05,
		insSignMsg: 0x06,
	},
}

// Coins returns the ids of the coins with a known device app.
func Coins() []string {
	coins := make([]string, 0, len(apps))
	for coin := range apps {
		coins = append(coins, coin)
	}
	return coins
}
