// Command qrmint prints a signed QR payload for an existing ticket, for
// exercising the check-in endpoints locally.
//
//	QR_SIGNING_SECRET=... qrmint -ticket <uuid> -event <uuid>
package main

import (
	"flag"
	"fmt"
	"os"

	"ticketcheckin/config"
	"ticketcheckin/internal/adapters/qrtoken"
)

func main() {
	ticketID := flag.String("ticket", "", "ticket id (uuid)")
	eventID := flag.String("event", "", "event id the ticket was issued for (uuid)")
	flag.Parse()

	if *ticketID == "" || *eventID == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	signer, err := qrtoken.NewSigner([]byte(cfg.QRSigningSecret))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	raw, err := qrtoken.NewIssuer(signer, qrtoken.NewCodec()).Issue(*ticketID, *eventID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(raw)
}
