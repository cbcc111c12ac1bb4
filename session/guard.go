package session

import "sync"

// Guard гарантирует единственный teardown на токен: при конкурентных 401
// от бэкенда куку чистит и редирект сигналит только первый запрос,
// остальные получают уже разорванную сессию без повторной обработки.
type Guard struct {
	revoked sync.Map // token → struct{}
}

func NewGuard() *Guard {
	return &Guard{}
}

// Invalidate помечает токен отозванным. Возвращает true только при
// первом вызове для данного токена.
func (g *Guard) Invalidate(token string) bool {
	if token == "" {
		return false
	}
	_, loaded := g.revoked.LoadOrStore(token, struct{}{})
	return !loaded
}

// Revoked сообщает, был ли токен уже отозван.
func (g *Guard) Revoked(token string) bool {
	_, ok := g.revoked.Load(token)
	return ok
}
