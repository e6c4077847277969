package mysql

const upsertPropertySQL = `
INSERT INTO properties
  (id, owner, description, address, city, state, postal_code, country,
   bedrooms, bathrooms, area, lot_size, year_built, hoa_fee, taxes,
   parking, utilities, property_features)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  owner             = VALUES(owner),
  description       = VALUES(description),
  address           = VALUES(address),
  city              = VALUES(city),
  state             = VALUES(state),
  postal_code       = VALUES(postal_code),
  country           = VALUES(country),
  bedrooms          = VALUES(bedrooms),
  bathrooms         = VALUES(bathrooms),
  area              = VALUES(area),
  lot_size          = VALUES(lot_size),
  year_built        = VALUES(year_built),
  hoa_fee           = VALUES(hoa_fee),
  taxes             = VALUES(taxes),
  parking           = VALUES(parking),
  utilities         = VALUES(utilities),
  property_features = VALUES(property_features),
  updated_at        = CURRENT_TIMESTAMP
`

const deleteImagesSQL = `DELETE FROM property_images WHERE property_id = ?`

// Image order is the position column; callers append one "(?,?,?)" per image.
const insertImagesPrefix = "INSERT INTO property_images (property_id, position, image_url) VALUES "

const upsertSessionSQL = `
INSERT INTO sessions (token, owner)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE owner = VALUES(owner)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const ownerForTokenSQL = `SELECT owner FROM sessions WHERE token = ?`

const propertyColumns = `
  p.id, p.description, p.address, p.city, p.state, p.postal_code, p.country,
  p.bedrooms, p.bathrooms, p.area, p.lot_size, p.year_built, p.hoa_fee, p.taxes,
  p.parking, p.utilities, p.property_features`

const listByOwnerSQL = `SELECT` + propertyColumns + `
FROM properties p
WHERE p.owner = ?
ORDER BY p.id`

const getPropertySQL = `SELECT` + propertyColumns + `
FROM properties p
WHERE p.id = ? AND p.owner = ?`

const imagesByOwnerSQL = `
SELECT i.property_id, i.image_url
FROM property_images i
JOIN properties p ON p.id = i.property_id
WHERE p.owner = ?
ORDER BY i.property_id, i.position`

const imagesByPropertySQL = `
SELECT property_id, image_url
FROM property_images
WHERE property_id = ?
ORDER BY position`
