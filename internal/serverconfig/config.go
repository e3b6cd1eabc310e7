package serverconfig

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var ErrNoSQLClient = errors.New("no sql client available")

var (
	mutex sync.RWMutex
	data  = map[string]string{}
)

func Get(serverID, key string) string {
	fullKey := serverID + ":" + key

	mutex.RLock()
	defer mutex.RUnlock()
	if value, ok := data[fullKey]; ok {
		return value
	}

	return ""
}

func set(serverID, key, value string) {
	fullKey := serverID + ":" + key

	mutex.Lock()
	defer mutex.Unlock()

	data[fullKey] = value
}

func remove(serverID, key string) {
	fullKey := serverID + ":" + key

	mutex.Lock()
	defer mutex.Unlock()

	delete(data, fullKey)
}

// Load fills the internal store with every value saved in the database
func Load(sqlClient *sql.DB) error {
	const query = "SELECT server_id, key, value FROM config"
	rows, err := sqlClient.Query(query)
	if err != nil {
		return fmt.Errorf("loading server config: %w", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var serverID, key, value string
		if err := rows.Scan(&serverID, &key, &value); err != nil {
			return fmt.Errorf("scanning server config: %w", err)
		}

		set(serverID, key, value)
		n++
	}

	slog.Info("server_config_loaded", "values", n)

	return rows.Err()
}

// Save sets a value in the database, and then updates the internal store
func Save(sqlClient *sql.DB, serverID, key, value string) (err error) {
	if sqlClient == nil {
		return ErrNoSQLClient
	}
	const query = "INSERT INTO config (server_id, key, value) VALUES ($1, $2, $3) ON CONFLICT (server_id, key) DO UPDATE SET value=$3"
	_, err = sqlClient.Exec(query, serverID, key, value)
	if err != nil {
		return
	}

	// Update internal store
	set(serverID, key, value)

	return
}

// Remove a value from the database, also removing it from the internal store
func Remove(sqlClient *sql.DB, serverID, key string) (err error) {
	if sqlClient == nil {
		return ErrNoSQLClient
	}
	const query = "DELETE FROM config WHERE server_id=$1 AND key=$2"
	_, err = sqlClient.Exec(query, serverID, key)
	if err != nil {
		return
	}

	// Update internal store
	remove(serverID, key)

	return
}
