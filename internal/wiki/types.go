package wiki

// queryResponse is the MediaWiki action=query response envelope
// (formatversion=2).
type queryResponse struct {
	Continue *continueToken `json:"continue"`
	Query    *queryResult   `json:"query"`
	Error    *apiErrorBody  `json:"error"`
}

// continueToken carries pagination state between link batches.
type continueToken struct {
	PLContinue string `json:"plcontinue"`
	Continue   string `json:"continue"`
}

type queryResult struct {
	Pages []pageResult `json:"pages"`
}

// pageResult is one page entry in a query response.
type pageResult struct {
	PageID  int        `json:"pageid"`
	Title   string     `json:"title"`
	Missing bool       `json:"missing"`
	Invalid bool       `json:"invalid"`
	Links   []pageLink `json:"links"`
}

// pageLink is a single outgoing link on a page.
type pageLink struct {
	NS    int    `json:"ns"`
	Title string `json:"title"`
}

// apiErrorBody is the MediaWiki error payload, returned with HTTP 200.
type apiErrorBody struct {
	Code string `json:"code"`
	Info string `json:"info"`
}
