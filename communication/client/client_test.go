package client

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"trapmouse/communication"
	"trapmouse/communication/server"
	"trapmouse/game"
	"trapmouse/gamemaster"
)

func startServer(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() {
		_ = server.NewServer(gamemaster.New()).Serve(ctx, ln)
	}()
	return ln.Addr().String()
}

func dial(t *testing.T, addr string) *Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Dial(ctx, addr)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestClient(t *testing.T) {
	addr := startServer(t)
	alice := dial(t, addr)
	bob := dial(t, addr)

	t.Run("create, join and poll", func(t *testing.T) {
		require.NoError(t, alice.Execute(communication.CreateRoom{Room: "lobby"}))
		require.NoError(t, alice.Execute(communication.JoinRoom{RoomID: 1, Role: game.MousePlayer, Player: "alice"}))
		_, err := alice.GetUpdate()
		require.NoError(t, err)
		require.NoError(t, bob.Execute(communication.JoinRoom{RoomID: 1, Role: game.TrapperPlayer, Player: "bob"}))
		_, err = bob.GetUpdate()
		require.NoError(t, err)

		snap, err := alice.GetUpdate()
		require.NoError(t, err)

		r, ok := snap.Find(1)
		require.True(t, ok)
		require.Equal(t, game.InGame, r.State)
		require.Equal(t, "bob", *r.TrapperPlayer)
	})

	t.Run("moves are seen by the other player", func(t *testing.T) {
		require.NoError(t, alice.Execute(communication.MoveMouse{RoomID: 1, To: game.Cell{X: 5, Y: 4}}))
		_, err := alice.GetUpdate()
		require.NoError(t, err)

		snap, err := bob.GetUpdate()
		require.NoError(t, err)

		r, _ := snap.Find(1)
		require.Equal(t, game.Cell{X: 5, Y: 4}, r.Mouse)
		require.Equal(t, game.TrapperPlayer, r.Turn)
	})

	t.Run("stray replies are skipped", func(t *testing.T) {
		require.NoError(t, alice.Send("hello"))
		require.NoError(t, alice.Send("move_mouse 1 nope 3"))

		snap, err := alice.GetUpdate()

		require.NoError(t, err)
		require.Len(t, snap.Rooms, 1)
	})
}

func TestDialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = Dial(ctx, addr)

	require.Error(t, err)
}
