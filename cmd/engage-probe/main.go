// engage-probe: exercises a running engage-cloud instance end to end.
// Connects over WebSocket, sends synthetic video frames with scene text, and
// prints the engagement updates that come back.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/engageiq/go-engage/pkg/engage"
	"github.com/engageiq/go-engage/pkg/protocol"
)

var (
	serverURL = flag.String("url", "ws://localhost:8000/ws/session", "WebSocket endpoint")
	interval  = flag.Duration("interval", 2*time.Second, "Delay between frames")
	count     = flag.Int("count", 0, "Frames to send, 0 for unlimited")
)

// A minimal valid JPEG so detection has something to decode.
var probeJPEG = []byte{
	0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46, 0x00, 0x01,
	0x01, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0xFF, 0xD9,
}

// Scene descriptions cycled through to exercise the scorer in both
// directions.
var sceneTexts = []string{
	"everyone engaged and smiling, leaning forward",
	"participants attentive, making eye contact and nodding",
	"some people looking away, one checking phone",
	"the group seems bored and distracted, arms crossed",
	"people sitting calm and relaxed around the table",
}

func main() {
	flag.Parse()

	fmt.Println("🛰  Engage Probe")
	fmt.Printf("   Connecting to %s\n\n", *serverURL)

	ws, _, err := websocket.DefaultDialer.Dial(*serverURL, nil)
	if err != nil {
		fmt.Printf("❌ Failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer ws.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Health check round trip first.
	ping, err := protocol.NewPingMessage("probe")
	if err != nil {
		fmt.Printf("❌ Build ping: %v\n", err)
		os.Exit(1)
	}
	if err := writeMessage(ws, ping); err != nil {
		fmt.Printf("❌ Send ping: %v\n", err)
		os.Exit(1)
	}
	if _, err := readMessage(ws); err != nil {
		fmt.Printf("❌ Ping round trip: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✅ Connected")

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	sent := 0
	for {
		select {
		case <-sigChan:
			fmt.Println("\n👋 Done")
			return
		case <-ticker.C:
		}

		text := sceneTexts[sent%len(sceneTexts)]
		frame, err := protocol.NewVideoFrameMessage(probeJPEG, text, uint64(sent+1))
		if err != nil {
			fmt.Printf("❌ Build frame: %v\n", err)
			return
		}
		if err := writeMessage(ws, frame); err != nil {
			fmt.Printf("❌ Send frame: %v\n", err)
			return
		}

		resp, err := readMessage(ws)
		if err != nil {
			fmt.Printf("❌ Read response: %v\n", err)
			return
		}
		printResponse(sent+1, text, resp)

		sent++
		if *count > 0 && sent >= *count {
			fmt.Println("\n👋 Done")
			return
		}
	}
}

func writeMessage(ws *websocket.Conn, msg *protocol.Message) error {
	data, err := msg.Bytes()
	if err != nil {
		return err
	}
	return ws.WriteMessage(websocket.TextMessage, data)
}

func readMessage(ws *websocket.Conn) (*protocol.Message, error) {
	_, data, err := ws.ReadMessage()
	if err != nil {
		return nil, err
	}
	return protocol.ParseMessage(data)
}

func printResponse(frameNum int, text string, msg *protocol.Message) {
	switch msg.Type {
	case protocol.TypeEngagementUpdate:
		var room engage.RoomEngagement
		if err := msg.ParseData(&room); err != nil {
			fmt.Printf("  frame %d: bad update payload: %v\n", frameNum, err)
			return
		}
		fmt.Printf("frame %3d  %-55q\n", frameNum, text)
		fmt.Printf("           overall=%.2f participants=%d active=%d speaking=%d\n",
			room.Overall, room.TotalParticipants, room.ActiveParticipants,
			room.Participation.SpeakingCount)
		for _, p := range room.Persons {
			fmt.Printf("           person %d: score=%.2f ctx=%.2f emo=%.2f body=%.2f\n",
				p.PersonID, p.Overall,
				p.Components.Context, p.Components.Emotion, p.Components.BodyLanguage)
		}
	case protocol.TypeError:
		var e protocol.ErrorData
		msg.ParseData(&e)
		fmt.Printf("  frame %d: server error %s: %s\n", frameNum, e.Code, e.Message)
	default:
		fmt.Printf("  frame %d: unexpected %s\n", frameNum, msg.Type)
	}
}
