package solana

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/smallie/smallie/internal/core/ports"
)

// systemProgramID is the native system program (all-zero key).
var systemProgramID [32]byte

const transferInstructionIndex = 2

// buildTransferMessage serializes the legacy message for a single system
// transfer: header, account keys [from, to, system program], recent
// blockhash, and one transfer instruction. The payer is the only required
// signer.
func buildTransferMessage(order ports.TransferOrder) ([]byte, error) {
	from, err := decodePubkey(order.FromPubkey)
	if err != nil {
		return nil, fmt.Errorf("invalid sender pubkey: %w", err)
	}
	to, err := decodePubkey(order.ToPubkey)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient pubkey: %w", err)
	}
	blockhash, err := base58Decode(order.RecentBlockhash)
	if err != nil || len(blockhash) != 32 {
		return nil, fmt.Errorf("invalid recent blockhash %q", order.RecentBlockhash)
	}
	if order.Lamports == 0 {
		return nil, fmt.Errorf("transfer amount is zero")
	}

	var msg bytes.Buffer

	// Header: 1 required signature, 0 readonly signed, 1 readonly
	// unsigned (the program).
	msg.Write([]byte{1, 0, 1})

	writeCompactU16(&msg, 3)
	msg.Write(from[:])
	msg.Write(to[:])
	msg.Write(systemProgramID[:])

	msg.Write(blockhash)

	// One instruction: system transfer from account 0 to account 1.
	writeCompactU16(&msg, 1)
	msg.WriteByte(2) // program id index
	writeCompactU16(&msg, 2)
	msg.Write([]byte{0, 1})

	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[0:4], transferInstructionIndex)
	binary.LittleEndian.PutUint64(data[4:12], order.Lamports)
	writeCompactU16(&msg, len(data))
	msg.Write(data)

	return msg.Bytes(), nil
}

// assembleTransaction prepends the signature section to a signed message.
func assembleTransaction(signature []byte, message []byte) []byte {
	var tx bytes.Buffer
	writeCompactU16(&tx, 1)
	tx.Write(signature)
	tx.Write(message)
	return tx.Bytes()
}

// writeCompactU16 emits the shortvec length prefix used throughout the
// wire format.
func writeCompactU16(buf *bytes.Buffer, v int) {
	for {
		if v < 0x80 {
			buf.WriteByte(byte(v))
			return
		}
		buf.WriteByte(byte(v&0x7f | 0x80))
		v >>= 7
	}
}
