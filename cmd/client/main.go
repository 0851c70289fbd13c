package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"gitlab.com/dirk.krummacker/customer-dashboard/pkg/model"
)

// Usage example on the command line:
// > go run main.go
// > go run main.go -base=http://localhost:8081/dashboard/customer
func main() {
	basePtr := flag.String("base", "http://localhost:8080/api/customer", "the base URL of the customer endpoints")
	flag.Parse()
	base := *basePtr

	fmt.Println()
	fmt.Println("  Elements      POST       PUT       GET")
	fmt.Println("-----------------------------------------")
	sizes := []int{1000, 5000, 10000, 50000, 100000}
	jsonBody := []byte(`{
		"firstName": "Marcus",
		"middleName": "Antonius",
		"lastName": "Triumvir"
	}`)
	for _, loops := range sizes {
		ids := make([]int64, 0, loops)
		fmt.Printf("%10d", loops)
		{
			// POST requests
			var duration int64
			for i := 0; i < loops; i++ {
				id, d := sendSaveRequest(base, bytes.NewReader(jsonBody))
				ids = append(ids, id)
				duration += d
			}
			fmt.Printf("%10d", duration/int64(loops*1000))
		}
		{
			// PUT requests
			f := func(id int64) int64 {
				url := fmt.Sprintf("%s/update/%d", base, id)
				_, d := sendRequest(http.MethodPut, url, bytes.NewReader(jsonBody))
				return d
			}
			callInLoop(ids, f)
		}
		{
			// GET requests
			f := func(id int64) int64 {
				_, d := sendRequest(http.MethodGet, fmt.Sprintf("%s/%d", base, id), nil)
				return d
			}
			callInLoop(ids, f)
		}
		fmt.Println()
	}
}

func callInLoop(ids []int64, f func(id int64) int64) {
	shuffled := append([]int64(nil), ids...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	var duration int64
	for _, id := range shuffled {
		duration += f(id)
	}
	fmt.Printf("%10d", duration/int64(len(ids)*1000))
}

func sendSaveRequest(base string, bodyReader io.Reader) (int64, int64) {
	resBody, duration := sendRequest(http.MethodPost, base+"/save", bodyReader)
	var customer model.CustomerDTO
	err := sonic.Unmarshal(resBody, &customer)
	if err != nil || customer.ID == nil {
		fmt.Println("could not unmarshal customer", err, string(resBody))
		panic(err)
	}
	return *customer.ID, duration
}

func sendRequest(method string, requestURL string, bodyReader io.Reader) ([]byte, int64) {
	req, err := http.NewRequest(method, requestURL, bodyReader)
	if err != nil {
		fmt.Println("could not create request", err)
		panic(err)
	}
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	before := time.Now().UnixNano()
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("error making http request", err)
		panic(err)
	}
	defer res.Body.Close()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Println("could not read response body", err)
		panic(err)
	}
	after := time.Now().UnixNano()
	return resBody, after - before
}
