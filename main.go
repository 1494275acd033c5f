package main

import "reservation-portal/cmd"

func main() {
	cmd.Execute()
}
