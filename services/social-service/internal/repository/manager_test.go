package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestHelloAllowsTransactions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		hello bson.M
		want  bool
	}{
		{"standalone", bson.M{"isWritablePrimary": true, "maxWireVersion": int32(21)}, false},
		{"replica set", bson.M{"isWritablePrimary": true, "setName": "rs0"}, true},
		{"empty set name", bson.M{"setName": ""}, false},
		{"mongos", bson.M{"isWritablePrimary": true, "msg": "isdbgrid"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, helloAllowsTransactions(tt.hello))
		})
	}
}
