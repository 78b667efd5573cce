package settings_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/settings"
)

func TestService_Load(t *testing.T) {
	custom := settings.Defaults()
	custom.General.CompanyName = "Coastline Cars"

	tests := []struct {
		name      string
		setupMock func(m *settings.MockStore)
		want      settings.Configuration
	}{
		{
			name: "Persisted",
			setupMock: func(m *settings.MockStore) {
				m.EXPECT().Get(gomock.Any()).Return([]byte(`{"general":{"companyName":"Coastline Cars"}}`), nil)
			},
			want: custom,
		},
		{
			name: "NothingSaved",
			setupMock: func(m *settings.MockStore) {
				m.EXPECT().Get(gomock.Any()).Return(nil, nil)
			},
			want: settings.Defaults(),
		},
		{
			name: "StoreError",
			setupMock: func(m *settings.MockStore) {
				m.EXPECT().Get(gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			want: settings.Defaults(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := settings.NewMockStore(ctrl)
			tt.setupMock(store)

			svc := settings.NewService(store)
			assert.Equal(t, tt.want, svc.Load(context.Background()))
		})
	}
}

func TestService_Save(t *testing.T) {
	invalid := settings.Defaults()
	invalid.General.Currency = "rupees"
	invalid.Branding.AccentColor = "blue"
	invalid.General.CompanyName = ""

	tests := []struct {
		name       string
		cfg        settings.Configuration
		setupMock  func(m *settings.MockStore)
		wantErr    error
		wantFields []string
	}{
		{
			name: "Success",
			cfg:  settings.Defaults(),
			setupMock: func(m *settings.MockStore) {
				m.EXPECT().Set(gomock.Any(), settings.Defaults()).Return(nil)
			},
		},
		{
			name:      "Invalid",
			cfg:       invalid,
			setupMock: func(_ *settings.MockStore) {},
			wantErr:   settings.ErrInvalid,
			wantFields: []string{
				"Configuration.General.CompanyName",
				"Configuration.General.Currency",
				"Configuration.Branding.AccentColor",
			},
		},
		{
			name: "StoreError",
			cfg:  settings.Defaults(),
			setupMock: func(m *settings.MockStore) {
				m.EXPECT().Set(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			wantErr: errors.New("saving settings: disk full"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := settings.NewMockStore(ctrl)
			tt.setupMock(store)

			err := settings.NewService(store).Save(context.Background(), tt.cfg)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)

			if errors.Is(tt.wantErr, settings.ErrInvalid) {
				assert.ErrorIs(t, err, settings.ErrInvalid)

				var verr *settings.ValidationError
				require.ErrorAs(t, err, &verr)

				for _, f := range tt.wantFields {
					assert.Contains(t, verr.Fields, f)
				}

				return
			}

			assert.EqualError(t, err, tt.wantErr.Error())
		})
	}
}
