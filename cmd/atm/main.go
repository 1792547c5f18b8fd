// Command atm drives a simulated teller terminal from the command line.
package main

func main() {
	Execute()
}
