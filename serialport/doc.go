// Package serialport connects to the programmer adapter over a serial line.
//
// A *Port implements protocol.Channel. Two drivers are available: Open
// uses go.bug.st/serial and is the default; OpenTarm uses tarm/serial.
// Both configure 8N1 and a short read timeout, so Recv returns no data
// instead of blocking when the adapter is silent.
//
//	port, err := serialport.Open("/dev/ttyUSB0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	pic := icsp.NewPort(protocol.NewFramer(port))
package serialport
