package main

import (
	"text_trans_api/cmd"
	"text_trans_api/pkg/logger"
)

func main() {
	defer logger.Close()
	cmd.Execute()
}
