package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every HTTP surface mounted on the application server.
type Handler interface {
	RegisterRoutes(router *httprouter.Router)
}
