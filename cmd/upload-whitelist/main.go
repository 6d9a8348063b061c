// Command upload-whitelist loads Aadhaar numbers from a CSV file into the
// voting application's whitelist collection.
//
// Usage:
//
//	upload-whitelist --file aadhaar_list.csv --db mongodb://localhost:27017/voting-app
//
// The CSV file must have a column named aadhaar_number holding 12-digit
// Aadhaar numbers. Numbers already in the whitelist are left untouched.
package main

func main() {
	Execute()
}
