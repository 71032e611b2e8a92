package router

import "github.com/gin-gonic/gin"

// Module is a mountable route bundle. Public routes need no credential;
// authed routes sit behind the JWT middleware.
type Module interface {
	Mount(public, authed *gin.RouterGroup)
}

// AdminModule mounts onto the admin engine's role-gated group.
type AdminModule interface {
	MountAdmin(*gin.RouterGroup)
}

func MountAll(public, authed *gin.RouterGroup, mods ...Module) {
	for _, m := range mods {
		m.Mount(public, authed)
	}
}

func MountAllAdmin(admin *gin.RouterGroup, mods ...AdminModule) {
	for _, m := range mods {
		m.MountAdmin(admin)
	}
}
