package ledger

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	packetSize    = 64
	channelID     = 0x0101
	tagAPDU       = 0x05
	maxChunkSize  = 255
	statusOK      = 0x9000
	statusDenied  = 0x6985
	statusNoApp1  = 0x6d00
	statusNoApp2  = 0x6e00
	statusLocked  = 0x6982
	statusBadData = 0x6a80
)

var (
	// ErrInvalidReply is returned when the device answers with a frame that
	// does not follow the HID framing.
	ErrInvalidReply = errors.New("invalid reply from device")
)

// StatusError is a non-success status word returned by the device. Its
// message follows the wording of the device SDK.
type StatusError struct {
	Code uint16
}

func (e *StatusError) Error() string {
	switch e.Code {
	case statusDenied:
		return "Ledger device: Condition of use not satisfied (denied by the user?) (0x6985)"
	case statusLocked:
		return "Ledger device: Security status not satisfied (device locked?) (0x6982)"
	case statusNoApp1, statusNoApp2:
		return fmt.Sprintf("Ledger device: app not open (0x%04x)", e.Code)
	case statusBadData:
		return "Ledger device: Invalid data received (0x6a80)"
	default:
		return fmt.Sprintf("Ledger device: UNKNOWN_ERROR (0x%04x)", e.Code)
	}
}

// exchange sends an APDU to the device and returns the reply payload without
// the trailing status word.
func exchange(device io.ReadWriter, apdu []byte) ([]byte, error) {
	if err := writeFrames(device, apdu); err != nil {
		return nil, err
	}

	reply, err := readFrames(device)
	if err != nil {
		return nil, err
	}
	if len(reply) < 2 {
		return nil, ErrInvalidReply
	}

	status := binary.BigEndian.Uint16(reply[len(reply)-2:])
	if status != statusOK {
		return nil, &StatusError{status}
	}
	return reply[:len(reply)-2], nil
}

// writeFrames splits the APDU into HID reports. The first report carries the
// total length of the APDU right after the header.
func writeFrames(w io.Writer, apdu []byte) error {
	payload := make([]byte, 2+len(apdu))
	binary.BigEndian.PutUint16(payload, uint16(len(apdu)))
	copy(payload[2:], apdu)

	for seq := uint16(0); len(payload) > 0; seq++ {
		frame := make([]byte, packetSize)
		binary.BigEndian.PutUint16(frame, channelID)
		frame[2] = tagAPDU
		binary.BigEndian.PutUint16(frame[3:], seq)

		n := copy(frame[5:], payload)
		payload = payload[n:]

		if _, err := w.Write(frame); err != nil {
			return err
		}
	}
	return nil
}

func readFrames(r io.Reader) ([]byte, error) {
	var (
		reply  []byte
		length int
	)
	frame := make([]byte, packetSize)

	for seq := uint16(0); ; seq++ {
		if _, err := io.ReadFull(r, frame); err != nil {
			return nil, err
		}
		if binary.BigEndian.Uint16(frame) != channelID ||
			frame[2] != tagAPDU ||
			binary.BigEndian.Uint16(frame[3:]) != seq {
			return nil, ErrInvalidReply
		}

		data := frame[5:]
		if seq == 0 {
			length = int(binary.BigEndian.Uint16(data))
			data = data[2:]
		}
		reply = append(reply, data...)

		if len(reply) >= length {
			return reply[:length], nil
		}
	}
}

func command(cla, ins, p1, p2 byte, data []byte) []byte {
	apdu := make([]byte, 5+len(data))
	apdu[0] = cla
	apdu[1] = ins
	apdu[2] = p1
	apdu[3] = p2
	apdu[4] = byte(len(data))
	copy(apdu[5:], data)
	return apdu
}

// chunks splits data so that every chunk fits a single APDU.
func chunks(data []byte) [][]byte {
	var out [][]byte
	for len(data) > maxChunkSize {
		out = append(out, data[:maxChunkSize])
		data = data[maxChunkSize:]
	}
	return append(out, data)
}
