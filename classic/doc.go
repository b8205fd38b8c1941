// Package classic provides access to the World of Warcraft Classic game data APIs.
//
// All requests use the region's dynamic-classic namespace and the client's locale.
//
// # Usage
//
//	realms, err := classic.New(client).GetRealms(ctx)
//	if err != nil {
//		return err
//	}
//	for _, realm := range realms.Realms {
//		fmt.Println(realm.Slug, realm.Name)
//	}
//
// Single-document lookups return (nil, nil) when the API answers 404:
//
//	realm, err := classic.New(client).GetRealm(ctx, "grobbulus")
//	if err == nil && realm == nil {
//		// no such realm
//	}
package classic
