// Package pexels provides a client for the Pexels photo and video API.
//
// The client builds listing URLs from configured endpoints, performs the
// request, and keeps the pagination links of the last response so callers
// can walk forward and backward through result pages.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := pexels.NewClient(apiKey, endpoints, logger,
//		pexels.WithTimeout(15*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if _, err := client.SearchVideos(ctx, "drone nature", pexels.WithPerPage(20)); err != nil {
//		log.Fatal(err)
//	}
//
//	for _, video := range client.VideoEntries() {
//		link, err := video.Link()
//		if err != nil {
//			continue
//		}
//		fmt.Println(link)
//	}
//
//	// Walk to the next page, if the server offered one
//	if _, ok, err := client.NextPage(ctx); ok && err == nil {
//		// ...
//	}
//
// # Records
//
// Photo and Video are views over the raw JSON records of the last response.
// Every accessor returns an error of its own: *MissingFieldError when the
// record lacks the field, *MalformedFieldError when it has the wrong shape.
// A bad field never prevents reading the others.
//
// # Error Handling
//
// The package defines several error types:
//
//   - ConfigError: invalid endpoints or API key, reported by NewClient
//   - TransportError: no response was obtained (DNS, refused, timeout)
//   - APIError: non-success status, with IsUnauthorized and IsNotFound
//   - MissingFieldError, MalformedFieldError: record accessor failures
//
// Each matches a sentinel through errors.Is:
//
//	if errors.Is(err, pexels.ErrUnauthorized) {
//		// Handle auth failure
//	}
//
// Any failed request clears the cached body and pagination links, so
// NextPage and PreviousPage become no-ops until a request succeeds.
package pexels
