package httpclient

import (
	"net"
	"net/http"
	"time"
)

// Controller embeds an http.Client
// and uses it internally
type Controller struct {
	*http.Client
}

var Client Controller

func init() {
	// All outbound Supabase, OpenAI and file-fetch traffic shares this
	// client. Dial, response-header and total timeouts are bounded so a
	// stuck upstream surfaces as an error instead of a hung handler.
	client := &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: time.Second * 3,
			}).DialContext,
			MaxIdleConnsPerHost: 50,

			ResponseHeaderTimeout: time.Second * 10,
		},
		// Document downloads and LLM completions are the slowest calls
		// the service makes; the platform caps handlers at 60s.
		Timeout: 60 * time.Second,
	}
	Client = Controller{Client: client}
}
