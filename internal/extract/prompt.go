package extract

// The instruction text below IS the extraction algorithm: field extraction,
// unit normalization, and category assignment are all delegated to the model.
// Changing this text changes behavior; the Go code only parses defensively.

const extractionPrompt = `
Extract all individual item entries from the receipt. Respond only with a JSON array. Each item object must have "name" (string), "price" (number), "quantity" (number), and "unit" (string).

Specific instructions for items with quantities by weight or volume:
- Identify any numerical value directly followed by a unit of weight (e.g., "LB", "lb", "LBS", "KG", "kg", "GR", "gr", "G", "g", "OZ", "oz") or volume (e.g., "ML", "ml", "L", "l", "GAL", "gal", "ea", "ct").
- If such a specific quantity and unit are indicated for an item (e.g., "1.5 LB Pickles", "440GR Bread", "12 OZ Soda", "500G Coffee"), set the "quantity" field to the numerical value of that amount (e.g., 1.5, 440, 12, 500).
- Extract the detected unit (e.g., "LB", "GR", "OZ", "g", "ml") and place it into the "unit" field. Do NOT append the unit to the "name" in this case.
- For items that are discrete units (e.g., "Milk", "Bread") or where no specific unit of measure is listed, the "unit" field should be an empty string ("").
- The "price" should always be the total price for that item line.
- If an item is marked "by unit" (e.g., "by LB", "by KG", "by OZ") but no specific amount is listed, set the "quantity" to 1 and the "unit" field to the corresponding unit (e.g., "lb", "oz").

Example output:
[
  {
    "name": "Milk",
    "price": 3.49,
    "quantity": 1,
    "unit": ""
  },
  {
    "name": "Pickles",
    "price": 4.12,
    "quantity": 1.5,
    "unit": "lb"
  },
  {
    "name": "Bread Lvovsky",
    "price": 3.69,
    "quantity": 440,
    "unit": "gr"
  }
]
Do not include any additional text or markdown quotes. If no items are found, return an empty array [].
`

const normalizePrompt = `
Please review the item names in the provided JSON array for any spelling errors or inconsistencies, especially regarding product weights and units, and correct them.
Additionally, convert all item names to lowercase.
Ensure that numerical values and their associated units are accurately represented (e.g., '44DGR' should be interpreted as '440gr' if 'D' represents '0' in this context).
Lowercase the "unit" field as well.
Add a "category" field to every item, choosing exactly one of:
Produce, Dairy & Eggs, Meat & Seafood, Bakery & Bread, Pantry, Frozen Foods, Beverages, Snacks, Household, Personal Care, Other.
Use "Other" when nothing fits.
Maintain the exact JSON structure and respond only with the JSON array, no markdown quotes.
`
