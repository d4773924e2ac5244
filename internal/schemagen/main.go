// Command schemagen writes the JSON schema of the kontrol configuration file.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/macropower/kontrol/pkg/config"
)

var outFile = flag.String("o", config.SchemaFileName, "Output file for the generated schema")

func main() {
	flag.Parse()

	jsData, err := config.SchemaJSON()
	if err != nil {
		log.Fatalf("generate JSON schema: %v", err)
	}

	err = os.WriteFile(*outFile, jsData, 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}
