package common

var (
	depositPrefix  = []byte{0x01}
	withdrawPrefix = []byte{0x02}
)

// DepositDetails marks factory transfer details produced by a vault deposit.
func DepositDetails(txDetails []byte) []byte {
	return append(depositPrefix, txDetails...)
}

// WithdrawDetails marks factory transfer details produced by a vault withdrawal.
func WithdrawDetails(txDetails []byte) []byte {
	return append(withdrawPrefix, txDetails...)
}
