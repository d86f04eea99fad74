package assetrecv

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type Call struct {
	From    interop.Hash160
	Amount  int
	AssetID []byte
	Data    any
}

func OnGameAssetPayment(from interop.Hash160, amount int, id []byte, data any) {
	if amount <= 0 {
		panic("wrong amount")
	}
	storage.Put(storage.GetContext(), "key", std.Serialize(Call{
		From:    from,
		Amount:  amount,
		AssetID: id,
		Data:    data,
	}))
}

func Get() Call {
	val := storage.Get(storage.GetReadOnlyContext(), "key")
	if val == nil {
		return Call{}
	}
	return std.Deserialize(val.([]byte)).(Call)
}

func Verify() bool {
	return true
}
