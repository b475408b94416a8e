package contracts

import "github.com/julienschmidt/httprouter"

// Handler is anything that can register its routes on a router.
type Handler interface {
	RegisterRoutes(router *httprouter.Router)
}
