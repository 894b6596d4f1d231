// Package zebedee provides a typed client for the ZEBEDEE Lightning payments API.
//
// Each Client method maps one REST endpoint onto a request/response pair. All
// responses pass through a single parser that separates provider rejections
// from bodies the client could not understand.
//
// # Usage
//
//	client := zebedee.New(
//		zebedee.WithAPIKey(os.Getenv("ZBD_API_KEY")),
//		zebedee.WithLogger(logger),
//		zebedee.WithTimeout(10*time.Second),
//	)
//
//	charge, err := client.CreateCharge(ctx, zebedee.ChargeRequest{
//		Amount:      "10000",
//		Description: "coffee",
//	})
//
// Amounts are millisatoshi strings and are never parsed by the client.
//
// # Error Handling
//
// Every method returns *Error, classified by Kind:
//
//   - KindTransport: the HTTP exchange did not complete
//   - KindMalformedResponse: the body was not JSON, or not the expected shape
//   - KindAPI: non-2xx status with a provider message
//   - KindValidation: the request failed local checks and was never sent
//
// The kinds match the ErrTransport, ErrMalformedResponse, ErrAPI and
// ErrValidation sentinels:
//
//	if errors.Is(err, zebedee.ErrAPI) {
//		zerr, _ := zebedee.AsError(err)
//		fmt.Println(zerr.Message)
//	}
//
// # Login with ZBD
//
// The OAuth methods need WithOAuth. The caller drives the flow: generate a
// pkce.PKCE, open AuthorizationURL, exchange the returned code together with
// the verifier via ExchangeToken, and refresh with RefreshToken. The user
// scoped GetOAuthUser and GetOAuthUserWallet send the access token in the
// usertoken header.
package zebedee
