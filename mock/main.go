package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
)

func main() {
	// Default port
	port := "8081"

	if len(os.Args) > 1 {
		port = os.Args[1]
	}

	http.HandleFunc("/search.json", SerpApiSearchHandler)

	addr := fmt.Sprintf(":%s", port)
	fmt.Printf("Mock SerpApi running on port %s...\n", port)
	fmt.Printf("point SERPAPI_BASE_URL at http://localhost:%s/search.json\n", port)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal(err)
	}
}
