package store

import (
	"context"
	"testing"

	"github.com/apexhome/products-manager/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMail(t *testing.T) {
	db := newTestDB(t)

	ms := db.Mail()
	ctx := context.Background()

	newMail := func(sent bool) *entity.SendEmailRequest {
		return &entity.SendEmailRequest{
			From:    "alerts@apexhome.in",
			To:      "ops@apexhome.in",
			Html:    "<p>bucket FSAASDF at 90%</p>",
			Subject: "Sequence capacity alert",
			Sent:    sent,
		}
	}

	_, err := ms.AddMail(ctx, newMail(false))
	require.NoError(t, err)
	_, err = ms.AddMail(ctx, newMail(false))
	require.NoError(t, err)
	_, err = ms.AddMail(ctx, newMail(true))
	require.NoError(t, err)

	unsent, err := ms.GetAllUnsent(ctx, false)
	require.NoError(t, err)
	require.Len(t, unsent, 2)

	require.NoError(t, ms.UpdateSent(ctx, unsent[0].Id))
	require.NoError(t, ms.AddError(ctx, unsent[1].Id, "error"))

	unsent, err = ms.GetAllUnsent(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, unsent)

	unsent, err = ms.GetAllUnsent(ctx, true)
	require.NoError(t, err)
	require.Len(t, unsent, 1)
	assert.Equal(t, "error", unsent[0].ErrMsg.String)
}
