package parse

import (
	"strings"

	"github.com/newtron-network/vydriver/pkg/model"
)

// Token positions in "set system login user <name> ..." commands.
const (
	userNameToken  = 4
	userAttrToken  = 5
	sshKeyTokens   = 10
	sshKeyKeyToken = 8
)

// Users reads "show configuration commands":
//
//	set system login user alice authentication encrypted-password '$6$...'
//	set system login user alice authentication public-keys alice@host key 'AAAAB3...'
//	set system login user alice level 'admin'
//
// The admin level maps to 15; every other account is level 0.
func Users(output string) map[string]model.User {
	users := make(map[string]model.User)
	for _, l := range lines(output) {
		if !strings.Contains(l, "login user") {
			continue
		}
		tok := strings.Fields(l)
		if len(tok) <= userAttrToken+1 {
			continue
		}
		name := unquote(tok[userNameToken])
		u, ok := users[name]
		if !ok {
			u = model.User{SSHKeys: []string{}}
		}

		switch {
		case len(tok) > 7 && tok[6] == "encrypted-password":
			u.Password = unquote(tok[7])
		case tok[userAttrToken] == "level":
			u.Level = 0
			if unquote(tok[6]) == "admin" {
				u.Level = 15
			}
		case len(tok) == sshKeyTokens && tok[sshKeyKeyToken] == "key":
			u.SSHKeys = append(u.SSHKeys, unquote(tok[9]))
		}
		users[name] = u
	}
	return users
}

func unquote(s string) string {
	return strings.Trim(s, `'"`)
}
