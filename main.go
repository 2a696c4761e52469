package main

import "github.com/saadjs/nutripet/cmd/nutripet"

func main() {
	nutripet.Execute()
}
