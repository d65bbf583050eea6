package invoice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Mdmuzammil18/invoice-app/internal/invoice"
	"github.com/Mdmuzammil18/invoice-app/internal/invoice/store"
	"github.com/Mdmuzammil18/invoice-app/internal/storage"
)

func TestService_Create(t *testing.T) {
	type args struct {
		params invoice.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *invoice.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: invoice.CreateParams{
					InvoiceNumber: "INV-001",
					Date:          "2024-06-01",
					DueDate:       "2024-07-01",
					Status:        invoice.StatusPending,
					Items: []invoice.Item{
						{Description: "Consulting", Quantity: 2, Price: 150},
					},
				},
			},
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "RepoError",
			args: args{
				params: invoice.CreateParams{
					InvoiceNumber: "INV-002",
				},
			},
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any()).
					Return(errors.New("storage error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := invoice.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := invoice.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, tt.args.params.InvoiceNumber, got.InvoiceNumber)
			assert.False(t, got.CreatedAt.IsZero())
			assert.Equal(t, got.CreatedAt, got.UpdatedAt)
		})
	}
}

func TestService_Create_DerivesTotals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(nil)

	svc := invoice.NewService(repo)
	got, err := svc.Create(context.Background(), invoice.CreateParams{
		InvoiceNumber: "INV-010",
		Items: []invoice.Item{
			{Description: "Design", Quantity: 3, Price: 100},
			{Description: "Hosting", Quantity: 1, Price: 25.5},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 325.5, got.Subtotal)
	assert.Equal(t, 325.5, got.Total)
	for _, item := range got.Items {
		assert.NotEmpty(t, item.ID)
	}
	assert.Equal(t, 300.0, got.Items[0].Amount)
	assert.Equal(t, 25.5, got.Items[1].Amount)
}

func TestService_Create_DistinctIDsNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := invoice.NewService(store.New(storage.NewMemoryStore()))

	first, err := svc.Create(ctx, invoice.CreateParams{InvoiceNumber: "INV-001"})
	require.NoError(t, err)

	second, err := svc.Create(ctx, invoice.CreateParams{InvoiceNumber: "INV-002"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestService_Create_DefaultsToDraft(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(nil)

	svc := invoice.NewService(repo)
	got, err := svc.Create(context.Background(), invoice.CreateParams{
		InvoiceNumber: "INV-011",
	})

	require.NoError(t, err)
	assert.Equal(t, invoice.StatusDraft, got.Status)
}

func TestService_Update(t *testing.T) {
	stored := func() *invoice.Invoice {
		return &invoice.Invoice{
			ID:            "inv-1",
			InvoiceNumber: "INV-001",
			Status:        invoice.StatusDraft,
			Notes:         "original notes",
			Items: []invoice.Item{
				{ID: "item-1", Description: "Consulting", Quantity: 2, Price: 150, Amount: 300},
			},
			Subtotal: 300,
			Total:    300,
		}
	}

	type args struct {
		id     string
		params invoice.UpdateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *invoice.MockRepository)
		wantErr   error
		check     func(t *testing.T, got *invoice.Invoice)
	}

	statusPaid := invoice.StatusPaid
	notes := "updated notes"

	tests := []testCase{
		{
			name: "MergesSetFields",
			args: args{
				id: "inv-1",
				params: invoice.UpdateParams{
					Status: &statusPaid,
					Notes:  &notes,
				},
			},
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().GetInvoice(gomock.Any(), "inv-1").Return(stored(), nil)
				m.EXPECT().UpdateInvoice(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, got *invoice.Invoice) {
				assert.Equal(t, invoice.StatusPaid, got.Status)
				assert.Equal(t, "updated notes", got.Notes)
				// Untouched fields survive the merge.
				assert.Equal(t, "INV-001", got.InvoiceNumber)
				assert.Equal(t, 300.0, got.Total)
			},
		},
		{
			name: "RecomputesTotalsWhenItemsTouched",
			args: args{
				id: "inv-1",
				params: invoice.UpdateParams{
					Items: &[]invoice.Item{
						{ID: "item-1", Description: "Consulting", Quantity: 4, Price: 150},
					},
				},
			},
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().GetInvoice(gomock.Any(), "inv-1").Return(stored(), nil)
				m.EXPECT().UpdateInvoice(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, got *invoice.Invoice) {
				assert.Equal(t, 600.0, got.Subtotal)
				assert.Equal(t, 600.0, got.Total)
				assert.Equal(t, 600.0, got.Items[0].Amount)
			},
		},
		{
			name: "NotFound",
			args: args{
				id:     "missing",
				params: invoice.UpdateParams{Notes: &notes},
			},
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().GetInvoice(gomock.Any(), "missing").Return(nil, invoice.ErrNotFound)
			},
			wantErr: invoice.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := invoice.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := invoice.NewService(repo)
			got, err := svc.Update(context.Background(), tt.args.id, tt.args.params)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.False(t, got.UpdatedAt.IsZero())
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestService_Update_SyncsCurrent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stored := &invoice.Invoice{ID: "inv-1", InvoiceNumber: "INV-001"}

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().GetInvoice(gomock.Any(), "inv-1").Return(stored, nil)
	repo.EXPECT().UpdateInvoice(gomock.Any(), gomock.Any()).Return(nil)

	svc := invoice.NewService(repo)
	svc.SetCurrent(&invoice.Invoice{ID: "inv-1", InvoiceNumber: "INV-001"})

	number := "INV-099"
	got, err := svc.Update(context.Background(), "inv-1", invoice.UpdateParams{
		InvoiceNumber: &number,
	})

	require.NoError(t, err)
	assert.Same(t, got, svc.Current())
	assert.Equal(t, "INV-099", svc.Current().InvoiceNumber)
}

func TestService_Delete(t *testing.T) {
	t.Run("ClearsMatchingCurrent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		repo.EXPECT().DeleteInvoice(gomock.Any(), "inv-1").Return(nil)

		svc := invoice.NewService(repo)
		svc.SetCurrent(&invoice.Invoice{ID: "inv-1"})

		require.NoError(t, svc.Delete(context.Background(), "inv-1"))
		assert.Nil(t, svc.Current())
	})

	t.Run("LeavesOtherCurrent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		repo.EXPECT().DeleteInvoice(gomock.Any(), "inv-2").Return(nil)

		svc := invoice.NewService(repo)
		svc.SetCurrent(&invoice.Invoice{ID: "inv-1"})

		require.NoError(t, svc.Delete(context.Background(), "inv-2"))
		require.NotNil(t, svc.Current())
		assert.Equal(t, "inv-1", svc.Current().ID)
	})

	t.Run("RepoError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		repo.EXPECT().DeleteInvoice(gomock.Any(), "inv-1").Return(errors.New("storage error"))

		svc := invoice.NewService(repo)
		assert.Error(t, svc.Delete(context.Background(), "inv-1"))
	})
}

func TestService_CurrentSelection(t *testing.T) {
	svc := invoice.NewService(nil)

	assert.Nil(t, svc.Current())

	inv := &invoice.Invoice{ID: "inv-1"}
	svc.SetCurrent(inv)
	assert.Same(t, inv, svc.Current())

	svc.ClearCurrent()
	assert.Nil(t, svc.Current())
}
