// Command user-cli is an interactive client for experiment participants.
//
// It runs a /notify listener on its own port so the server can push messages
// (session start announcements and admin answers), and reads commands from
// stdin:
//
//	register            register with the server, prints the assigned id
//	predict <n>         submit a prediction for the active session
//	see-my-predictions  print the predictions collected this session
//
// # Usage
//
//	go run ./cmd/user-cli --server=http://localhost:8080 --port=9001
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
	"time"

	"github.com/go-chi/chi/v5"
)

func main() {
	var (
		serverURL = flag.String("server", "http://localhost:8080", "Experiment server URL")
		port      = flag.String("port", "9001", "Local port for the /notify listener")
	)
	flag.Parse()

	go runNotifyListener(*port)

	client := &http.Client{Timeout: 10 * time.Second}
	userID := -1

	scanner := bufio.NewScanner(os.Stdin)
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
		case "register":
			id, err := register(client, *serverURL, *port)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			userID = id
			fmt.Println(id)

		case "predict":
			if len(fields) < 2 {
				fmt.Println("usage: predict <number>")
				continue
			}
			if userID < 0 {
				fmt.Println("register first")
				continue
			}
			value, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("usage: predict <number>")
				continue
			}
			if err := predict(client, *serverURL, userID, value); err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Println("Ok")

		case "see-my-predictions":
			if userID < 0 {
				fmt.Println("register first")
				continue
			}
			preds, err := myPredictions(client, *serverURL, userID)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Println(preds)

		case "quit", "exit":
			return

		default:
			fmt.Println("commands: register, predict <n>, see-my-predictions")
		}
	}
}

// runNotifyListener prints every message the server pushes to this user.
func runNotifyListener(port string) {
	r := chi.NewRouter()
	r.Post("/notify", func(w http.ResponseWriter, req *http.Request) {
		body, _ := io.ReadAll(req.Body)
		fmt.Printf("\n%s\n> ", body)
		w.WriteHeader(http.StatusOK)
	})

	if err := http.ListenAndServe(":"+port, r); err != nil {
		fmt.Printf("notify listener failed: %v\n", err)
		os.Exit(1)
	}
}

func register(client *http.Client, serverURL, port string) (int, error) {
	body, _ := json.Marshal(map[string]string{"socket": port})
	resp, err := client.Post(serverURL+"/user/register", "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var result struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, err
	}
	return result.ID, nil
}

func predict(client *http.Client, serverURL string, id, value int) error {
	body, _ := json.Marshal(map[string]int{"id": id, "pred": value})
	resp, err := client.Post(serverURL+"/user/predict", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	return nil
}

func myPredictions(client *http.Client, serverURL string, id int) (string, error) {
	body, _ := json.Marshal(map[string]int{"id": id})
	req, err := http.NewRequest(http.MethodGet, serverURL+"/user/get", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var result struct {
		Predictions string `json:"predictions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Predictions, nil
}
