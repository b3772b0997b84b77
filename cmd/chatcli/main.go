/*
Package main is a small terminal client for the PawHaven support chat.

It connects to a running server, optionally identifies itself, and bridges
stdin lines to the chat. Useful for support staff smoke tests:

	chatcli -url ws://localhost:8080/ws -uid 1 -name admin -admin

Lines are broadcast by default; "/to <userId> <text>" sends privately and
"/quit" exits.
*/
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"pawhaven/internal/app/chat"
	"pawhaven/internal/chatclient"
	"pawhaven/internal/pkg/logx"
)

func main() {
	url := flag.String("url", "ws://localhost:8080/ws", "support chat endpoint")
	uid := flag.String("uid", "", "user id to identify as (empty = guest)")
	name := flag.String("name", "", "username to identify as")
	admin := flag.Bool("admin", false, "identify as support staff")
	flag.Parse()

	logx.InitGlobalLogger(false)

	var identity *chat.Identity
	if *uid != "" {
		identity = &chat.Identity{
			UserID:   chat.UserID(*uid),
			Username: *name,
			IsAdmin:  *admin,
		}
	}

	widget := chatclient.New(chatclient.Options{
		URL:      *url,
		Identity: identity,
		OnStatus: func(s chatclient.Status) {
			fmt.Printf("-- %s\n", s)
		},
		OnEntry: func(e chatclient.Entry) {
			who := "system"
			if e.Sender != nil {
				who = e.Sender.Username
			}
			fmt.Printf("[%s] %s: %s\n", e.Timestamp, who, e.Text)
		},
		OnNotice: func(text string) {
			fmt.Printf("!! %s\n", text)
		},
	})

	if err := widget.Open(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "connect failed: %v\n", err)
		os.Exit(1)
	}
	defer widget.Close()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if line == "/quit" {
			return
		}

		if rest, ok := strings.CutPrefix(line, "/to "); ok {
			recipient, text, found := strings.Cut(rest, " ")
			if !found || recipient == "" || text == "" {
				fmt.Println("usage: /to <userId> <text>")
				continue
			}
			widget.SendTo(text, chat.UserID(recipient))
			continue
		}

		widget.Send(line)
	}
}
