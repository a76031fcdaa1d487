package main

import "github.com/galafis/Modern-ETL-Pipeline/cmd/etl/cmd"

func main() {
	cmd.Execute()
}
