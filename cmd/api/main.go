package main

// @title Chat Relay APIs
// @version 1.0
// @description Relays chat sessions to a remote automation workflow.

// @host localhost:9089
// @BasePath /
// @schemes http
import (
	_ "chat-relay/docs"
	protocol "chat-relay/protocal"

	"github.com/sirupsen/logrus"
)

func main() {
	err := protocol.ServeHTTP()
	if err != nil {
		logrus.Fatalln(err)
	}
}
