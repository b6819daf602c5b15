// Command admin-cli is an interactive client for the experiment
// administrator. It reads commands from stdin:
//
//	start               start a session
//	stop                stop the session, archiving its predictions
//	answer <id> <text>  message a single user
//	get                 list every participant's predictions
//	statistic           print current and historical statistics
//
// Every command spends a freshly generated even secret, since the server
// accepts each secret at most once.
//
// # Usage
//
//	go run ./cmd/admin-cli --server=http://localhost:8080
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// adminPassword gates the interactive loop. It protects against typos, not
// attackers; the server trusts the one-time secrets, not this password.
const adminPassword = "banana"

// secretGenerator hands out even secrets, each used exactly once.
type secretGenerator struct {
	mu   sync.Mutex
	next uint64
}

func (g *secretGenerator) Get() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next += 2
	return g.next
}

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "Experiment server URL")
	flag.Parse()

	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Enter password:")
	if !scanner.Scan() || scanner.Text() != adminPassword {
		fmt.Println("wrong password")
		os.Exit(1)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	secrets := &secretGenerator{}

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "start":
			runSimple(client, *serverURL, "/admin/start", secrets)

		case "stop":
			runSimple(client, *serverURL, "/admin/stop", secrets)

		case "answer":
			if len(fields) < 3 {
				fmt.Println("usage: answer <id> <text>")
				continue
			}
			id, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("usage: answer <id> <text>")
				continue
			}
			answer(client, *serverURL, secrets, id, strings.Join(fields[2:], " "))

		case "get":
			runQuery(client, *serverURL, "/admin/get", secrets)

		case "statistic":
			runQuery(client, *serverURL, "/admin/stat", secrets)

		case "quit", "exit":
			return

		default:
			fmt.Println("commands: start, stop, answer <id> <text>, get, statistic")
		}
	}
}

func secretBody(secrets *secretGenerator, extra map[string]string) []byte {
	req := map[string]string{"secret": strconv.FormatUint(secrets.Get(), 10)}
	for k, v := range extra {
		req[k] = v
	}
	body, _ := json.Marshal(req)
	return body
}

func runSimple(client *http.Client, serverURL, path string, secrets *secretGenerator) {
	resp, err := client.Post(serverURL+path, "application/json", bytes.NewReader(secretBody(secrets, nil)))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Error: server returned status %d\n", resp.StatusCode)
		return
	}
	fmt.Println("Ok")
}

func answer(client *http.Client, serverURL string, secrets *secretGenerator, id int, text string) {
	body := secretBody(secrets, map[string]string{
		"id":     strconv.Itoa(id),
		"answer": text,
	})

	resp, err := client.Post(serverURL+"/admin/answer", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Error: server returned status %d\n", resp.StatusCode)
		return
	}
	fmt.Println("Ok")
}

func runQuery(client *http.Client, serverURL, path string, secrets *secretGenerator) {
	req, err := http.NewRequest(http.MethodGet, serverURL+path, bytes.NewReader(secretBody(secrets, nil)))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Error: server returned status %d\n", resp.StatusCode)
		return
	}

	body, _ := io.ReadAll(resp.Body)
	fmt.Println(string(body))
}
