package crypto

import "encoding/binary"

// XOR はデータストリームの各バイトを指定されたキーで XOR します。
func XOR(data []byte, key byte) {
	for i := range data {
		data[i] ^= key
	}
}

// XORWords はデータをリトルエンディアンの 32bit ワード列とみなし、各ワードを
// key で XOR します。4 バイトに満たない端数はそのまま残します。
// XOR は自己逆写像なので暗号化・復号のどちらにも使えます。
func XORWords(data []byte, key uint32) {
	for i := 0; i+4 <= len(data); i += 4 {
		word := binary.LittleEndian.Uint32(data[i:])
		binary.LittleEndian.PutUint32(data[i:], word^key)
	}
}
