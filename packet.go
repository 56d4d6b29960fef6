package oledhid

// PayloadSize is the total size of one HID report in bytes, including the
// two header bytes (report ID and sequence index).
const PayloadSize = 32

const (
	reportID   = 0x01
	packetData = PayloadSize - 2
)

// Packet is a single HID report carrying one chunk of frame data. Index is
// the 0-based position of the chunk within its frame. Packets are plain
// comparable values: two packets are equal when the index and every
// payload byte match.
type Packet struct {
	Index   uint8
	Payload [packetData]byte
}

// Bytes returns the wire form of the packet: the report ID, the sequence
// index, and the payload.
func (p Packet) Bytes() []byte {
	b := make([]byte, 0, PayloadSize)
	b = append(b, reportID, p.Index)
	return append(b, p.Payload[:]...)
}

// packetize chunks buf into packets of packetData bytes each, zero padding
// the final packet. Indices count up from 0 in emission order.
func packetize(buf []byte) []Packet {
	packets := make([]Packet, 0, (len(buf)+packetData-1)/packetData)
	for i := 0; len(buf) > 0; i++ {
		p := Packet{Index: uint8(i)}
		n := copy(p.Payload[:], buf)
		buf = buf[n:]
		packets = append(packets, p)
	}
	return packets
}
