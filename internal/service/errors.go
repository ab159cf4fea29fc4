package service

import "fmt"

// StorageError - запись в хранилище не удалась. Фетч и парсинг к этому
// моменту уже прошли, но инвокация адаптера считается проваленной целиком.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: storage write failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
