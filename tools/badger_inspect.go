// Command badger_inspect dumps the persisted state of a chat-relay database
// in a readable table. Useful to check what a room actually stored, visibility
// sets included, without going through the service.
//
// Usage:
//
//	go run ./tools -db /var/lib/chat-relay -prefix msg:group_g1:
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"

	"chat-relay/repositories"
)

func main() {
	dbPath := flag.String("db", "/tmp/chat-relay", "Path to badger DB")
	prefix := flag.String("prefix", "msg:", "Prefix to scan (msg:, group:, user:)")
	flag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*dbPath).WithReadOnly(true).WithLogger(nil))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Type", "Timestamp", "Sender", "Visibility", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(v []byte) error {
				table.Append(rowFor(key, v))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal("Error while scanning: ", err)
	}

	table.Render()
}

func rowFor(key string, value []byte) []string {
	switch {
	case strings.HasPrefix(key, "msg:"):
		var m repositories.DiskMessage
		if err := json.Unmarshal(value, &m); err != nil {
			return []string{key, "MSG", "", "", "", "unreadable: " + err.Error()}
		}
		visibility := "room-wide"
		if m.VisibleTo != nil {
			visibility = strings.Join(m.VisibleTo, ",")
		}
		return []string{key, "MSG", m.At.Format("2006-01-02 15:04:05"), m.Sender, visibility, m.Body}

	case strings.HasPrefix(key, "group:"):
		var g repositories.Group
		if err := json.Unmarshal(value, &g); err != nil {
			return []string{key, "GROUP", "", "", "", "unreadable: " + err.Error()}
		}
		return []string{key, "GROUP", g.CreatedAt.Format("2006-01-02 15:04:05"), "", "",
			fmt.Sprintf("%s (%d members)", g.Name, len(g.Members))}

	case strings.HasPrefix(key, "user:"):
		var u repositories.User
		if err := json.Unmarshal(value, &u); err != nil {
			return []string{key, "USER", "", "", "", "unreadable: " + err.Error()}
		}
		return []string{key, "USER", u.CreatedAt.Format("2006-01-02 15:04:05"), u.ID, "", u.DisplayName}

	default:
		return []string{key, "?", "", "", "", fmt.Sprintf("%d bytes", len(value))}
	}
}
