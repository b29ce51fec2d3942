package printer

import (
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p, err := New("none", "", "")
	require.NoError(t, err)
	assert.Equal(t, "none", p.Kind())
	assert.False(t, p.Ready(context.Background()))
	assert.NoError(t, p.Print(context.Background(), []byte("x")))

	_, err = New("usb", "", "")
	assert.Error(t, err)
	_, err = New("network", "", "")
	assert.Error(t, err)
	_, err = New("bluetooth", "", "")
	assert.Error(t, err)
}

func TestUSBPrinter_WritesToDeviceFile(t *testing.T) {
	path := t.TempDir() + "/lp0"
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	p := NewUSBPrinter(path)
	assert.True(t, p.Ready(context.Background()))
	require.NoError(t, p.Print(context.Background(), []byte("hello")))

	assert.False(t, NewUSBPrinter(path+"-missing").Ready(context.Background()))
}

func TestNetworkPrinter_SendsBytes(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	p := NewNetworkPrinter(ln.Addr().String())
	require.NoError(t, p.Print(context.Background(), []byte("receipt")))
	assert.Equal(t, []byte("receipt"), <-received)
}

func TestDocument_Layout(t *testing.T) {
	d := NewDocument(20).
		Heading("SHOP").
		Pair("Rice basmati premium", "120.00").
		Rule('-').
		Cut()
	out := d.Bytes()

	assert.True(t, bytes.HasPrefix(out, []byte{esc, '@'}))
	assert.Contains(t, string(out), "Rice basmati  120.00\n")
	assert.Contains(t, string(out), "--------------------\n")
	assert.True(t, bytes.HasSuffix(out, []byte{gs, 'V', 0x01}))
	assert.Equal(t, DefaultWidth, NewDocument(0).Width())
}
